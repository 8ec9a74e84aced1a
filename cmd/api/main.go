package main

import (
	_ "github.com/michaelsjacques/dreamcraft-estimator/docs"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           DreamCraft Estimator API
// @version         1.0
// @description     Trade show exhibit fabrication estimates (AI-generated three-tier quotes) backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
