package comparer

import (
	"regexp"
	"strings"
)

// placeholderPatterns list the template markers that appear in blank
// proposal forms before real customer data is filled in. Ordered from
// most to least specific so the cheap literal checks run first.
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`○○○`),
	regexp.MustCompile(`xxx`),
	regexp.MustCompile(`x\.xx%`),
	regexp.MustCompile(`××세`),
	regexp.MustCompile(`××××`),
	regexp.MustCompile(`O / O`),
	regexp.MustCompile(`OOOOOOOOOOOO`),
	regexp.MustCompile(`\[\s*보장성보험\s*\]`),
	regexp.MustCompile(`\[\s*표준형\s*\]`),
	regexp.MustCompile(`\[\s*해약환급금\s*50%\s*지급형\s*\]`),
	regexp.MustCompile(`\d{4}년\s*\d{2}월\s*\d{2}일\s*\d{2}:\d{2}`), // timestamp
	regexp.MustCompile(`\d{3}-\d{4}-\d{4}`),                      // phone number
	regexp.MustCompile(`\d{1,2}/\d{1,2}`),                        // short date
	regexp.MustCompile(`\d{1,2}세`),                               // age
	regexp.MustCompile(`[가-힣]{2,4}`),                             // person name
	regexp.MustCompile(`\d{1,3}(,\d{3})*원`),                      // amount
	regexp.MustCompile(`\d{1,2}\.\d{2}%`),                        // rate
	regexp.MustCompile(`(\d{1,3}(,\d{3})*)\s*만원`),                // amount in 만원
	regexp.MustCompile(`(\d{1,3}(,\d{3})*)\s*원`),                 // amount in 원
	regexp.MustCompile(`\d{1,2}\.\d{2}`),                         // decimal
	regexp.MustCompile(`\d{1,4}`),                                // bare number
	regexp.MustCompile(`[A-Z]{4,6}`),                             // uppercase code
}

func containsPlaceholder(text string) bool {
	for _, p := range placeholderPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// IsPlaceholderDiff reports whether the difference between a template
// block and a generated block is only a placeholder being filled in.
// Only the left (template) side is inspected; the right side is the
// generated document by convention.
func IsPlaceholderDiff(left, right string) bool {
	if !containsPlaceholder(left) {
		return false
	}
	return strings.TrimSpace(left) != strings.TrimSpace(right)
}
