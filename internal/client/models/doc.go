// Package models defines the records exchanged with the marketplace API and
// held by the console: the operator Session, users, pending ads, gallery
// images and dashboard counters.
//
// Records coming from the API may carry their identifier as "_id" or "id";
// decoding takes the first non-empty of the two.
package models
