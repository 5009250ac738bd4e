package mdvars_test

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/goliatone/go-mdvars"
)

func Example() {
	md := goldmark.New(goldmark.WithExtensions(mdvars.Variables))

	source := []byte("{{> product *mdvars* }}\n{{> spare unused }}\n\nThanks for trying {{ product }}.\n")

	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		panic(err)
	}
	fmt.Print(buf.String())
	// Output:
	// <p>{{&gt; spare unused }}</p>
	// <p>Thanks for trying <em>mdvars</em>.</p>
}
