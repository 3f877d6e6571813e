// Package release models the categorical attributes of a tracker release
// (content type, source media, codec, group, edition) and infers unset
// attributes from the release file name.
package release
