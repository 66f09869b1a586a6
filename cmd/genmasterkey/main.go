package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"dentaldesk/internal/config"
	"dentaldesk/internal/crypto"
	"dentaldesk/internal/utils"
)

func main() {
	out := flag.String("out", "", "Key file path (default <home>/master.key)")
	flag.Parse()

	keyFile := *out
	if keyFile == "" {
		keyFile = config.Load().MasterKeyPath()
	}
	if utils.FileExists(keyFile) {
		fmt.Fprintf(os.Stderr, "Error: %s already exists. Refusing to overwrite.\n", keyFile)
		os.Exit(1)
	}
	key, err := crypto.GenerateKey()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating random key: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(keyFile), 0700); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", filepath.Dir(keyFile), err)
		os.Exit(1)
	}
	if err := os.WriteFile(keyFile, []byte(hex.EncodeToString(key)+"\n"), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", keyFile, err)
		os.Exit(1)
	}
	fmt.Printf("Master key written to %s\n", keyFile)
	fmt.Println("Existing session files keyed from the device fingerprint will no longer decrypt; log in again.")
}
