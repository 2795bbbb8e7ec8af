package main

import (
	"fmt"
	"os"

	"github.com/flamesblue/resumebuilder/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	// .envがあれば読み込む（本番では環境変数を直接設定する）
	_ = godotenv.Load()

	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
