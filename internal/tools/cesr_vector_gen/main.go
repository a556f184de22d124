package main

import (
	"encoding/hex"
	"fmt"

	"xdao.co/cesr/derivation"
	"xdao.co/cesr/prefix"
)

const input = "abcdefghijklmnopqrstuvwxyz0123456789"

func mustKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

// Prints testdata/conformance/cesr/digests.txt.
func main() {
	key := mustKey()

	fmt.Println("# Self-addressing conformance vectors.")
	fmt.Printf("# Input: %s\n", input)
	fmt.Println("# Columns: code<TAB>key-hex (\"-\" for none)<TAB>prefix")
	for _, code := range derivation.SelfAddressingCodes() {
		p := prefix.NewSelfAddressing(code.Derive([]byte(input)))
		fmt.Printf("%s\t-\t%s\n", code, p)
		if !code.Algorithm().Keyed() {
			continue
		}
		keyed, err := code.WithKey(key)
		if err != nil {
			panic(err)
		}
		p = prefix.NewSelfAddressing(keyed.Derive([]byte(input)))
		fmt.Printf("%s\t%s\t%s\n", keyed, hex.EncodeToString(key), p)
	}
}
