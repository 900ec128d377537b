// @title           cargo-desk API
// @version         1.0
// @description     Cargo request desk: staff request management, sessions and public tracking.
// @BasePath        /
// @securityDefinitions.apikey SessionCookie
// @in header
// @name Authorization
// @description Bearer <token>, or the cargo_sid cookie set on login.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
