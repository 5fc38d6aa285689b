// Package devstore is a local, in-memory stand-in for the remote document
// store's REST API. It speaks the subset the session client uses:
//
//	GET  /databases/{db}/collections/{coll}?q=<json>[&fo=true|&c=true]&apiKey=<key>
//	POST /databases/{db}/collections/{coll}?apiKey=<key>               body: document
//	PUT  /databases/{db}/collections/{coll}?q=<json>[&u=true]&apiKey=<key>  body: {"$set": {...}}
//
// Filters match by equality on top-level fields, $set understands dotted
// paths, and inserted documents get an {"$oid": ...} _id. Nothing is
// persisted; restarting the process empties every collection.
package devstore
