package main

import "github.com/fieldday-games/bingohunt/internal/cli"

func main() {
	cli.Execute()
}
