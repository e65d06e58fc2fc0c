package storefront

// Endpoint paths, relative to the API base URL. Kept in one place so the
// stores never hard-code paths next to call sites.
const (
	EndpointSignIn         = "/api/v1/auth/sign-in"
	EndpointSignUp         = "/api/v1/auth/sign-up"
	EndpointForgotPassword = "/api/v1/auth/forgot-password"
	EndpointResetPassword  = "/api/v1/auth/reset-password"
	EndpointChangePassword = "/api/v1/auth/change-password"
	EndpointProfile        = "/api/v1/profile"

	EndpointProducts        = "/api/v1/products"
	EndpointProductSections = "/api/v1/products/sections"
	EndpointCategories      = "/api/v1/categories"
	EndpointBrands          = "/api/v1/brands"
	EndpointBanners         = "/api/v1/banners"
	EndpointStores          = "/api/v1/stores"

	EndpointCart      = "/api/v1/cart"
	EndpointWishlist  = "/api/v1/wishlist"
	EndpointOrders    = "/api/v1/orders"
	EndpointAddresses = "/api/v1/addresses"

	EndpointOTPSend   = "/api/v1/otp/send"
	EndpointOTPVerify = "/api/v1/otp/verify"
)
