// Package main runs raw completion text through the filter pipeline and
// prints each stage. Useful for tuning filter rules against real output.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kireev-dev/personabot/internal/textfilter"
)

func main() {
	name := flag.String("name", "", "character name to strip from prefixes")
	nsfw := flag.Bool("nsfw", false, "style adult sound tokens")
	flag.Parse()

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("failed to read stdin: %v", err)
	}

	cleaned := textfilter.Clean(string(raw), *name)
	fmt.Println("--- cleaned ---")
	fmt.Println(cleaned)

	tagged := textfilter.WrapEmotionTags(cleaned)
	fmt.Println("--- tagged ---")
	fmt.Println(tagged)

	fmt.Println("--- rendered ---")
	styled, err := textfilter.Render(tagged, *nsfw)
	if err != nil {
		fmt.Printf("render failed (%v), plain fallback:\n", err)
		styled = tagged
	}
	for i, chunk := range textfilter.Split(styled, err == nil) {
		fmt.Printf("[chunk %d]\n%s\n", i+1, chunk)
	}
}
