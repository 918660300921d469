package hexbytes_test

import (
	"fmt"

	"github.com/base-org/linksigner/hexbytes"
)

func ExampleDecode() {
	b, err := hexbytes.Decode("0xAbCd")
	fmt.Println(b, err)

	_, err = hexbytes.Decode("0xabc")
	fmt.Println(err)
	// Output:
	// [171 205] <nil>
	// odd number of hex digits (3): invalid hex encoding
}
