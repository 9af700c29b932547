package main

import "github.com/yigit/dormitory/internal/cli"

// @title Dormitory API
// @version 1.0
// @description Students, rooms, stays and billing for a dormitory
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cli.Execute()
}
