// Package main provides the CLI entrypoint for toasty.
package main

func main() {
	Execute()
}
