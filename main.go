package main

import "hobbyhive/internal/app"

// @title        HobbyHive Auth API
// @version      1.0
// @description  Account provisioning and credential service: OTP-verified registration, login, logout.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
