package main

import (
	"facepass.io/infrastructure"
	"facepass.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
