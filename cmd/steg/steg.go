// Command steg hides text in the least-significant bits of an image and digs it back out.
package main

// Program entry point

func main() {
	Execute()
}
