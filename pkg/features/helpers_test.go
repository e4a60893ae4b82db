// SPDX-License-Identifier: MPL-2.0

package features

import "github.com/babelfish-for-postgresql/babelfish-compass-sub002/pkg/version"

func versionOf(s string) version.Version { return version.Version(s) }
