package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"grubdash/internal/domain"
	httpapi "grubdash/internal/http"
	"grubdash/internal/repository"
	"grubdash/internal/service"

	_ "grubdash/docs"
)

func main() {
	viper.SetDefault("APP_PORT", ":5000")
	viper.SetDefault("GIN_MODE", gin.ReleaseMode)
	viper.AutomaticEnv()

	gin.SetMode(viper.GetString("GIN_MODE"))

	store := repository.NewMemoryStore()
	ordersRepo := repository.NewMemoryOrders(store)
	ids := repository.UUIDGenerator{}

	seedDishes(store)

	dishesSvc := service.NewDishService(store, ids)
	ordersSvc := service.NewOrderService(ordersRepo, ids)

	srv := httpapi.NewServer(dishesSvc, ordersSvc)

	httpServer := &http.Server{
		Addr:    viper.GetString("APP_PORT"),
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// seedDishes populates the menu so a fresh process has something to serve.
func seedDishes(repo repository.DishRepository) {
	dishes := []domain.Dish{
		{
			ID:          "d351db2b49b69679504652ea1cf38241",
			Name:        "Dolcelatte and chickpea spaghetti",
			Description: "Spaghetti topped with a blend of dolcelatte and fresh chickpeas",
			Price:       19,
			ImageURL:    "https://images.pexels.com/photos/1279330/pexels-photo-1279330.jpeg",
		},
		{
			ID:          "90c3d873684bf381dfab29034b5bba73",
			Name:        "Falafel and tahini bagel",
			Description: "A warm bagel filled with falafel and tahini",
			Price:       6,
			ImageURL:    "https://images.pexels.com/photos/4560347/pexels-photo-4560347.jpeg",
		},
		{
			ID:          "3c637d011d844ebab1205fef8a7e36ea",
			Name:        "Broccoli and beetroot stir fry",
			Description: "Crunchy stir fry featuring fresh broccoli and beetroot",
			Price:       15,
			ImageURL:    "https://images.pexels.com/photos/4144234/pexels-photo-4144234.jpeg",
		},
	}

	ctx := context.Background()
	for _, d := range dishes {
		if err := repo.Append(ctx, d); err != nil {
			log.Printf("Error seeding dish %s: %v", d.Name, err)
		}
	}
}
