// Package core drives a yaml2config run: it loads the configuration
// document, optionally brings the template repository up to date, then
// renders and writes every requested template in order.
//
// Problems with the document, the sync or the directories abort the run
// before anything is written. Problems with a single template are reported
// and the run moves on to the next one; the outcome records which templates
// failed.
package core
