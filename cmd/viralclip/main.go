package main

import "github.com/forPelevin/viralclip/internal/cli"

func main() { cli.Main() }
