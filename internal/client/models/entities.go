package models

import "time"

type Department struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	CreatedByID   int64      `json:"createdById,omitempty"`
	DeactivatedAt *time.Time `json:"deactivatedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt,omitzero"`
	UpdatedAt     time.Time  `json:"updatedAt,omitzero"`
}

// Category is a coupon request category. Approval limits and duplicate
// windows are enforced by the backend; the console only displays them.
type Category struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	Description       *string    `json:"description,omitempty"`
	IsSelectable      bool       `json:"isSelectable"`
	AutoApprovalLimit *float64   `json:"autoApprovalLimit,omitempty"`
	DuplicateWindow   int        `json:"duplicateWindow"`
	ParentID          *int64     `json:"parentId,omitempty"`
	DeactivatedAt     *time.Time `json:"deactivatedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt,omitzero"`
	UpdatedAt         time.Time  `json:"updatedAt,omitzero"`
}

type CouponStatus string

const (
	CouponActive      CouponStatus = "active"
	CouponDeactivated CouponStatus = "deactivated"
	CouponExpired     CouponStatus = "expired"
	CouponAssigned    CouponStatus = "assigned"
)

type Coupon struct {
	ID           int64        `json:"id"`
	Code         string       `json:"code"`
	Amount       float64      `json:"amount"`
	Status       CouponStatus `json:"status"`
	AssignedAt   *time.Time   `json:"assignedAt,omitempty"`
	CategoryID   *int64       `json:"categoryId,omitempty"`
	DepartmentID *int64       `json:"departmentId,omitempty"`
	CreatedBy    *Ref         `json:"createdBy,omitempty"`
	CreatedAt    time.Time    `json:"createdAt,omitzero"`
	UpdatedAt    time.Time    `json:"updatedAt,omitzero"`
}

type CouponRequestStatus string

const (
	RequestPending   CouponRequestStatus = "pending"
	RequestApproved  CouponRequestStatus = "approved"
	RequestRejected  CouponRequestStatus = "rejected"
	RequestCancelled CouponRequestStatus = "cancelled"
	RequestExpired   CouponRequestStatus = "expired"
)

type CouponRequestInformation struct {
	CustomerName      string     `json:"customerName"`
	CustomerPhone     string     `json:"customerPhone"`
	CustomerEmail     *string    `json:"customerEmail,omitempty"`
	OrderNumber       *string    `json:"orderNumber,omitempty"`
	OrderDate         time.Time  `json:"orderDate"`
	OrderTotalAmount  float64    `json:"orderTotalAmount"`
	OrderDeliveryDate *time.Time `json:"orderDeliveryDate,omitempty"`
	DuplicateReason   *string    `json:"duplicateReason,omitempty"`
}

type CouponRequest struct {
	ID                  int64                    `json:"id"`
	Amount              float64                  `json:"amount"`
	Description         *string                  `json:"description,omitempty"`
	Status              CouponRequestStatus      `json:"status"`
	StatusChangeDate    *time.Time               `json:"statusChangeDate,omitempty"`
	StatusChangeComment *string                  `json:"statusChangeComment,omitempty"`
	CategoryID          int64                    `json:"categoryId"`
	Category            *Ref                     `json:"category,omitempty"`
	CouponID            *int64                   `json:"couponId,omitempty"`
	DepartmentID        *int64                   `json:"departmentId,omitempty"`
	CreatedBy           *Ref                     `json:"createdBy,omitempty"`
	Information         CouponRequestInformation `json:"couponRequestInformation"`
	CreatedAt           time.Time                `json:"createdAt,omitzero"`
	UpdatedAt           time.Time                `json:"updatedAt,omitzero"`
}
