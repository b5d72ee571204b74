// Package availableinventory implements the read-side query for the current availability of one video.
package availableinventory
