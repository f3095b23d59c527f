// Package target defines the identity of a downloadable work and the pure
// resolution of user-supplied references (URLs or bare story IDs) into that
// identity.
//
// Resolution never touches the network: a reference either matches one of
// the known site patterns, falls back to a synthetic identity derived from
// the reference string itself, or is rejected as invalid. Equal references
// always resolve to equal identities.
package target
