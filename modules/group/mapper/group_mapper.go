package mapper

import (
	"terminfinder-api/modules/group/dto"
	"terminfinder-api/modules/group/entity"
)

func ToShareLinkResponse(link *entity.ShareLink, token string) *dto.ShareLinkResponse {
	return &dto.ShareLinkResponse{
		ID:        link.ID.String(),
		GroupCode: link.GroupCode,
		Token:     token,
		ExpiresAt: link.ExpiresAt,
		SingleUse: link.SingleUse,
	}
}
