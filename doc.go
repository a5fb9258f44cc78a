// Package fieldexpr layers dynamic, expression-bound values over
// declarative component configurations.
//
// The core code is in package 'core', pluggable expression engines are
// in 'evaluators', and some command-line tools are in `cmd`.
//
// See https://github.com/fieldexpr/fieldexpr/blob/master/README.md for more.
package fieldexpr
