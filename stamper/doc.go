// Package stamper substitutes single-brace {VAR} placeholders in format
// strings. The prh pipeline uses it to derive a pull request title or body
// from the branch, base and repository when the user leaves them empty.
package stamper
