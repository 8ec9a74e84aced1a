package routes

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/michaelsjacques/dreamcraft-estimator/docs" // swag-generated
	"github.com/michaelsjacques/dreamcraft-estimator/internal/adapter/http/handlers"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/adapter/persistence/repository"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/infrastructure/database"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/infrastructure/generator"
	"github.com/michaelsjacques/dreamcraft-estimator/internal/usecase"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	estimateRepo := repository.NewEstimateDynamoRepository(ddb)

	generatorGateway, err := generator.NewAnthropicGateway(os.Getenv("ANTHROPIC_API_KEY"))
	if err != nil {
		log.Fatalf("Generator gateway not configured: %v", err)
	}

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, generatorGateway)
	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimateRoutes(v1, estimateHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
