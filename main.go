// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/babelfish-for-postgresql/babelfish-compass-sub002/cmd/compass"

func main() {
	cmd.Execute()
}
