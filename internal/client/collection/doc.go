// Package collection holds one remote list (users or pending ads) in
// memory and serves pages and searches over it without further requests.
//
// # Model
//
// A Store keeps two slices in server order: all items from the latest
// load, and the visible subsequence matching the active search. Pages are
// cut from the visible slice. After every operation
//
//	totalPages  == max(1, ceil(len(visible) / pageSize))
//	1 <= currentPage <= totalPages
//
// Remove and Patch touch both slices together, so an id is never present
// in one and absent from the other.
//
// # Ordering
//
// Each Load takes a sequence number. When a newer Load has been started
// by the time a response arrives, that response is dropped with
// ErrStaleResponse and the store keeps whatever the newer one installs.
package collection
