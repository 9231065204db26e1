// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
)

type printer struct {
	w    io.Writer
	json bool
}

func newPrinter(ctx *cli.Context) *printer {
	return &printer{w: os.Stdout, json: ctx.GlobalBool(jsonFlag.Name)}
}

// print writes v as indented JSON, or as aligned "key value" lines with
// nested fields joined by dots.
func (p *printer) print(v any) error {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	if p.json {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := p.w.Write(buf.Bytes())
		return err
	}

	rows, err := flatten(data)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

// flatten turns a JSON document into key/value rows, keeping field order.
func flatten(data []byte) ([][2]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var rows [][2]string
	if err := flattenValue(dec, "", &rows); err != nil {
		return nil, errors.Wrap(err, "flatten output")
	}
	return rows, nil
}

func flattenValue(dec *json.Decoder, prefix string, rows *[][2]string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			empty := true
			for dec.More() {
				empty = false
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				key, _ := keyTok.(string)
				if err := flattenValue(dec, join(prefix, key), rows); err != nil {
					return err
				}
			}
			if empty {
				*rows = append(*rows, [2]string{prefix, "{}"})
			}
		case '[':
			i := 0
			for ; dec.More(); i++ {
				if err := flattenValue(dec, join(prefix, strconv.Itoa(i)), rows); err != nil {
					return err
				}
			}
			if i == 0 {
				*rows = append(*rows, [2]string{prefix, "[]"})
			}
		}
		// consume the closing delimiter
		_, err := dec.Token()
		return err
	case nil:
		*rows = append(*rows, [2]string{prefix, "-"})
	default:
		*rows = append(*rows, [2]string{prefix, fmt.Sprint(t)})
	}
	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
