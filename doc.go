// Package tbls builds weighted committees for threshold cryptography.
//
// A committee is a set of members, each holding an encryption public key and
// a weight. The weight is the number of shares of a shared secret a member
// controls, and every share is identified by a share id from 1 to the total
// weight. The nodes package holds the committee and its share mapping,
// including the reducer that scales weights down to keep the number of shares
// manageable. This package builds a committee from a config file.
package tbls
