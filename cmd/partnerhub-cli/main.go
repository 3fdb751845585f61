package main

import (
	"github.com/productfruits/partnerhub-internal/internal/cli"
)

func main() {
	cli.Execute()
}
