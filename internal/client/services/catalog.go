package services

import "github.com/dmitrijs2005/couponadmin/internal/client/models"

const (
	EndpointUsers          = "/users"
	EndpointDepartments    = "/departments"
	EndpointCategories     = "/coupon-request-categories"
	EndpointCoupons        = "/coupons"
	EndpointCouponRequests = "/coupon-requests"
)

// Catalog groups the resources the console works with.
type Catalog struct {
	Users          *Resource[models.User]
	Departments    *Resource[models.Department]
	Categories     *Resource[models.Category]
	Coupons        *Resource[models.Coupon]
	CouponRequests *Resource[models.CouponRequest]
}

func NewCatalog(doer Doer) *Catalog {
	return &Catalog{
		Users:          NewResource[models.User](doer, EndpointUsers),
		Departments:    NewResource[models.Department](doer, EndpointDepartments),
		Categories:     NewResource[models.Category](doer, EndpointCategories),
		Coupons:        NewResource[models.Coupon](doer, EndpointCoupons),
		CouponRequests: NewResource[models.CouponRequest](doer, EndpointCouponRequests),
	}
}
