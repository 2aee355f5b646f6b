// Package commitmsg holds the commit message conventions offered to the user
// before committing. The convention is advisory: Type and Conventional let the
// caller notice a message that does not follow it, but nothing is rejected.
package commitmsg
