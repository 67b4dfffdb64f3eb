package handlers

import (
	siteconfigRepo "github.com/KevinDarioIguaran/LCLGSC/database/repository/siteconfig"
	userRepoPkg "github.com/KevinDarioIguaran/LCLGSC/database/repository/user"
	orderService "github.com/KevinDarioIguaran/LCLGSC/services/order"
	"github.com/KevinDarioIguaran/LCLGSC/services/shop"
	siteService "github.com/KevinDarioIguaran/LCLGSC/services/site"
	userService "github.com/KevinDarioIguaran/LCLGSC/services/user"
)

// HandlerBundle groups the services behind the HTTP surface. The repos are
// carried along so route registration can hand them to the middleware.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository
	SiteRepo siteconfigRepo.Repository

	Users   userService.UserService
	Orders  orderService.OrderService
	Catalog shop.CatalogService
	Cart    shop.CartService
	Seller  shop.SellerService
	Site    siteService.SiteService
}
