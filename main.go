// Books store api: a small http crud service for a single book
// resource with interchangeable postgres and boltdb backends.
//
// @title Books Store API
// @version 1.0
// @description CRUD operations on the book resource.
// @BasePath /
package main

import (
	"log"
)

var (
	GitCommit string
	GitTag    string
	BuildTime string
)

func main() {
	app, err := NewApp()
	if err != nil {
		log.Fatal("application failed to initialized: ", err)
	}
	err = app.Run()
	if err != nil {
		log.Fatal("application exited. check logs for more details.", err)
	}
}
