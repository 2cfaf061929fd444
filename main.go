package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hshubham24beit-oss/news-website/bootstrap"
)

func main() {
	if err := bootstrap.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
