/*
Package cmdtree is the module root for a declarative command tree parser.

The interesting code lives in the [github.com/saylorsolutions/cmdtree/cli] package, and a small demo program lives in cmd/pkg.
*/
package cmdtree
