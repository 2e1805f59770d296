// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// check, audit
	offline bool
	// check, audit
	hibpURL string
	// check, audit
	blacklistFile string
	// audit
	inputFile string
	// audit
	threads int
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
)
