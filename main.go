package main

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/starshine-sys/quotebot/cmd"
	"github.com/starshine-sys/quotebot/common/log"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}
}
