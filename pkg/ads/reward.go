package ads

// RewardItem is the reward a user earned from a rewarded ad.
type RewardItem struct {
	// Amount is how much of the reward type was earned.
	Amount int64
	// Type names the reward, for example "coins".
	Type string
}

// ServerSideVerificationOptions carry the identifiers a publisher's server
// uses to verify rewarded ad callbacks.
type ServerSideVerificationOptions struct {
	UserID     string
	CustomData string
}

// Equal reports field-wise equality.
func (o *ServerSideVerificationOptions) Equal(other *ServerSideVerificationOptions) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.UserID == other.UserID && o.CustomData == other.CustomData
}
