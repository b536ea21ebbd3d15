// SPDX-FileCopyrightText: 2023 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package main implements a CLI tool which acts as a STUN client
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/natcheck/stun"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(os.Stderr, os.Args[0], "stun:stun.l.google.com:19302")
	}
	timeout := flag.Duration("timeout", 5*time.Second, "how long to wait for a response")
	flag.Parse()

	uriStr := flag.Arg(0)
	if uriStr == "" {
		uriStr = "stun:stun.l.google.com:19302"
	}

	uri, err := stun.ParseURI(uriStr)
	if err != nil {
		log.Fatalf("invalid URI '%s': %s", uriStr, err)
	}
	if uri.Proto != stun.ProtoTypeUDP {
		log.Fatalf("%s: only UDP STUN servers are supported", uriStr)
	}

	conn, err := net.Dial("udp", net.JoinHostPort(uri.Host, fmt.Sprint(uri.Port)))
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer conn.Close() //nolint:errcheck

	buf := stun.NewBuffer(stun.HeaderSize)
	request, _, err := stun.Build(buf, rand.Reader, stun.ClassRequest, stun.MethodBinding)
	if err != nil {
		log.Fatal("build:", err)
	}

	if err := conn.SetDeadline(time.Now().Add(*timeout)); err != nil {
		log.Fatal("set deadline:", err)
	}
	if _, err := conn.Write(request); err != nil {
		log.Fatal("write:", err)
	}

	resp := make([]byte, 1500)
	n, err := conn.Read(resp)
	if err != nil {
		log.Fatal("read:", err)
	}

	dec, err := stun.NewDecoder(resp[:n])
	if err != nil {
		log.Fatal("decode:", err)
	}

	var xorAddr stun.XORMappedAddress
	xorAddr.TransactionID = dec.TransactionID()
	if err := dec.Get(stun.AttrXORMappedAddress, &xorAddr); err != nil {
		log.Fatal("no XOR-MAPPED-ADDRESS:", err)
	}
	fmt.Println(xorAddr.String())
}
