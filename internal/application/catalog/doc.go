// Package catalog reads the regional datasets (districts, subdistricts and
// villages) from flat JSON files and answers lookups, searches and
// statistics over them.
//
// Files are read on every call; nothing is indexed. The only state a Catalog
// keeps between calls is the optional search result cache.
package catalog
