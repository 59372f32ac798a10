package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole("admin"))

	mux := pat.New()

	// Users (admin accounts)
	mux.Post("/user/sign_up", adminMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/sign_out", standardMiddleware.ThenFunc(app.userHandler.SignOut))

	// Businesses
	mux.Post("/business", adminMiddleware.ThenFunc(app.businessHandler.CreateBusiness))
	mux.Post("/business/search", standardMiddleware.ThenFunc(app.businessHandler.SearchBusinesses))
	mux.Get("/business/:id", standardMiddleware.ThenFunc(app.businessHandler.GetBusinessByID))
	mux.Put("/business/:id", adminMiddleware.ThenFunc(app.businessHandler.UpdateBusiness))
	mux.Del("/business/:id", adminMiddleware.ThenFunc(app.businessHandler.DeleteBusiness))
	mux.Post("/business/:id/archive", adminMiddleware.ThenFunc(app.businessHandler.ArchiveBusiness))

	// WhatsApp click tracking
	mux.Post("/business/:id/whatsapp_click", standardMiddleware.ThenFunc(app.clickHandler.RecordWhatsAppClick))
	mux.Get("/business/:id/clicks", adminMiddleware.ThenFunc(app.clickHandler.GetClickStats))

	// Coordinate resolution
	mux.Post("/geo/resolve", adminMiddleware.ThenFunc(app.geoHandler.StartResolve))
	mux.Get("/geo/resolve/status", standardMiddleware.ThenFunc(app.geoHandler.ResolveStatus))
	mux.Del("/geo/resolve", adminMiddleware.ThenFunc(app.geoHandler.CancelResolve))
	mux.Post("/geo/position", standardMiddleware.ThenFunc(app.geoHandler.ReportPosition))

	// Categories
	mux.Post("/category", adminMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Get("/category", standardMiddleware.ThenFunc(app.categoryHandler.GetAllCategories))
	mux.Get("/category/:id", standardMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Put("/category/:id", adminMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/category/:id", adminMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))

	// Reviews
	mux.Post("/review", standardMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/review/:business_id", standardMiddleware.ThenFunc(app.reviewHandler.GetReviewsByBusinessID))
	mux.Del("/review/:id", adminMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	// Favorites
	mux.Post("/favorites", standardMiddleware.ThenFunc(app.favoriteHandler.AddToFavorites))
	mux.Del("/favorites/visitor/:visitor_id/business/:business_id", standardMiddleware.ThenFunc(app.favoriteHandler.RemoveFromFavorites))
	mux.Get("/favorites/check/visitor/:visitor_id/business/:business_id", standardMiddleware.ThenFunc(app.favoriteHandler.IsFavorite))
	mux.Del("/favorites/visitor/:visitor_id", standardMiddleware.ThenFunc(app.favoriteHandler.ClearFavorites))
	mux.Get("/favorites/:visitor_id", standardMiddleware.ThenFunc(app.favoriteHandler.GetFavoritesByVisitor))

	// Favorites change feed
	mux.Get("/ws/favorites", http.HandlerFunc(app.ServeFavoritesWS))

	// Push tokens
	mux.Post("/notifications/token", standardMiddleware.ThenFunc(app.fcmHandler.RegisterToken))

	return standardMiddleware.Then(mux)
}
