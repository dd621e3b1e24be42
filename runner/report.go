package runner

import (
	"fmt"
	"io"
)

// Report writes one line per result
func Report(w io.Writer, results []Result) error {
	for _, res := range results {
		if err := reportOne(w, res); err != nil {
			return err
		}
	}
	return nil
}

func reportOne(w io.Writer, res Result) error {
	if res.Err != nil {
		_, err := fmt.Fprintf(w, "Merkle path for %s at height %d could not be checked: %s\n",
			res.Target.TxID, res.Target.Height, res.Err)
		return err
	}
	if _, err := fmt.Fprintf(w, "Merkle path for %s at height %d is correct: %t\n",
		res.TxID, res.Target.Height, res.Included); err != nil {
		return err
	}
	for level, h := range res.Trace {
		if _, err := fmt.Fprintf(w, "  level %d: %s\n", level, h); err != nil {
			return err
		}
	}
	return nil
}
