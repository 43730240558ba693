package service

// Message constants returned in Result payloads and error bodies. They
// are part of the wire contract with existing clients and must not be
// reworded.
const (
	MsgFundingSuccessful           = "FUNDING_SUCCESSFUL"
	MsgInvalidFundingAmount        = "INVALID_FUNDING_AMOUNT"
	MsgPurchaseSuccessful          = "PURCHASE_SUCCESSFUL"
	MsgInvalidPurchaseAmount       = "INVALID_PURCHASE_AMOUNT"
	MsgRefundSuccessful            = "REFUND_SUCCESSFUL"
	MsgNoRefundablePurchase        = "NO_REFUNDABLE_PURCHASE"
	MsgLastPurchaseAlreadyRefunded = "LAST_PURCHASE_ALREADY_REFUNDED"
	MsgRefundExpired               = "REFUND_EXPIRED"
	MsgRefundNotPossible           = "REFUND_NOT_POSSIBLE"

	MsgUserNotFound      = "USER_NOT_FOUND"
	MsgUserAlreadyExists = "USER_ALREADY_EXISTS"
	MsgInvalidUserData   = "INVALID_USER_DATA"
	MsgUserDeleted       = "USER_DELETED"

	MsgItemNotFound      = "ITEM_NOT_FOUND"
	MsgItemAlreadyExists = "ITEM_ALREADY_EXISTS"
	MsgInvalidItemData   = "INVALID_ITEM_DATA"
	MsgItemDeleted       = "ITEM_DELETED"

	MsgInvalidCredentials = "INVALID_CREDENTIALS"
	MsgAdminRequired      = "ADMIN_REQUIRED"

	MsgImageNotFound = "IMAGE_NOT_FOUND"
	MsgImageDeleted  = "IMAGE_DELETED"
)
