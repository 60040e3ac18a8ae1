// Package tokens estimates token counts for summary metadata using the
// cl100k_base encoding.
package tokens

import (
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

var (
	once sync.Once
	enc  *tiktoken.Tiktoken
)

// Estimate returns the approximate token count of text. The count is
// best-effort metadata: if the encoding cannot be loaded the result is 0.
func Estimate(text string) int {
	once.Do(func() {
		enc, _ = tiktoken.GetEncoding("cl100k_base")
	})
	if enc == nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}
