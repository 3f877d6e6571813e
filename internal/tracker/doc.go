// Package tracker submits a prepared upload form to the tracker's web upload
// endpoint and recovers a direct download link from the HTML response.
//
// The response page never states which torrent the submission created, so the
// link recovery is a heuristic: among the rows owned by the submitting user it
// picks the most recent one and accepts it only when its timestamp falls
// inside a two-minute recency window.
package tracker
