package domain

func (GiftRecord) TableName() string           { return CollectionGifts }
func (SponsoredRecord) TableName() string      { return CollectionSponsoredContent }
func (ReferralRecord) TableName() string       { return CollectionReferrals }
func (SubscriptionRecord) TableName() string   { return CollectionSubscriptions }
func (CoinPurchaseRecord) TableName() string   { return CollectionCoinPurchases }
func (WithdrawalRecord) TableName() string     { return CollectionWithdrawals }
func (ChallengeRecord) TableName() string      { return CollectionChallenges }
func (ChallengeParticipant) TableName() string { return CollectionChallengeParticipants }
func (ChallengeCompletion) TableName() string  { return CollectionChallengeCompletions }
func (UserBadge) TableName() string            { return CollectionUserBadges }
func (VoiceComment) TableName() string         { return CollectionVoiceComments }
func (SecurityEvent) TableName() string        { return CollectionSecurityAuditLog }
func (PrivacySettings) TableName() string      { return CollectionPrivacySettings }
func (DataDeletionRequest) TableName() string  { return CollectionDataDeletionRequests }
func (TwoFactorSetting) TableName() string     { return CollectionTwoFactorSettings }

// Models lists every table, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Wallet{},
		&Transaction{},
		&GiftRecord{},
		&SponsoredRecord{},
		&ReferralRecord{},
		&SubscriptionRecord{},
		&CoinPurchaseRecord{},
		&WithdrawalRecord{},
		&ChallengeRecord{},
		&ChallengeParticipant{},
		&ChallengeCompletion{},
		&UserBadge{},
		&VoiceComment{},
		&SecurityEvent{},
		&PrivacySettings{},
		&DataDeletionRequest{},
		&TwoFactorSetting{},
	}
}
