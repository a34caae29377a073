package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/sys/unix"

	"github.com/x14ngch3n/MyDisassembler"
	"github.com/x14ngch3n/MyDisassembler/disasm"
)

var objPath = flag.String("objPath", "", "path to a raw binary file of x86-64 machine code")

func main() {
	flag.Parse()
	if *objPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	file, err := os.Open(*objPath)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		log.Fatal(err)
	}
	if info.Size() == 0 {
		return
	}

	mem, err := unix.Mmap(int(file.Fd()), 0, int(info.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		log.Fatalf("sys/unix.Mmap failed: %v", err)
	}
	defer unix.Munmap(mem)

	err = disasm.Walk(mem, 0, func(res x64dis.Result) bool {
		fmt.Printf("%#08x %d%s\n", res.Start, res.Length, res.Text)
		return true
	})
	if err != nil {
		log.Fatal(err)
	}
}
