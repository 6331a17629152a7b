// Package theme holds the theme registry, the active theme provider, and the
// custom CSS variable helpers used when a user defines their own palette.
package theme
