package routes

import (
	"net/http"

	"greencart/address"
	"greencart/auth"
	"greencart/middleware"
	"greencart/orders"
	"greencart/products"
	"greencart/ratelim"
	"greencart/seller"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/user/register", rl.Limit(auth.Register))
	router.POST("/api/user/login", rl.Limit(auth.Login))
	router.GET("/api/user/is-auth", middleware.Authenticate(auth.IsAuth))
	router.GET("/api/user/logout", middleware.Authenticate(auth.Logout))
}

func AddSellerRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/seller/login", rl.Limit(seller.Login))
	router.GET("/api/seller/is-auth", middleware.AuthenticateSeller(seller.IsAuth))
	router.GET("/api/seller/logout", middleware.AuthenticateSeller(seller.Logout))
}

func AddProductRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/product/list", products.ListProducts)
	router.GET("/api/product/id", products.GetProductByID)
	router.POST("/api/product/add", middleware.AuthenticateSeller(products.AddProduct))
	router.POST("/api/product/stock", middleware.AuthenticateSeller(products.ChangeStock))
	router.DELETE("/api/product/delete", middleware.AuthenticateSeller(products.DeleteProduct))
}

func AddAddressRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/address/add", middleware.Authenticate(address.AddAddress))
	router.POST("/api/address/get", middleware.Authenticate(address.GetAddresses))
	router.DELETE("/api/address/delete", middleware.Authenticate(address.DeleteAddress))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/order/cod", rl.Limit(middleware.Authenticate(orders.PlaceOrderCOD)))
	router.GET("/api/order/user", middleware.Authenticate(orders.GetUserOrders))
	router.PUT("/api/order/cancel", middleware.Authenticate(orders.CancelOrder))
	router.GET("/api/order/receipt", middleware.Authenticate(orders.DownloadReceipt))

	router.GET("/api/order/seller", middleware.AuthenticateSeller(orders.GetSellerOrders))
	router.PUT("/api/order/status", middleware.AuthenticateSeller(orders.UpdateOrderStatus))
	router.GET("/api/order/stats", middleware.AuthenticateSeller(orders.GetOrderStats))
}

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddSellerRoutes(router, rateLimiter)
	AddProductRoutes(router, rateLimiter)
	AddAddressRoutes(router, rateLimiter)
	AddOrderRoutes(router, rateLimiter)
	AddStaticRoutes(router)
}
