package admin

import (
	"net/http"
	"strings"
	"time"

	clerkjwt "github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jdmarsh-dev/fieldhouse/config"
	"github.com/jdmarsh-dev/fieldhouse/internal/common"
	"github.com/jdmarsh-dev/fieldhouse/pkg/responses"
	"github.com/jdmarsh-dev/fieldhouse/pkg/token"
	pkgutils "github.com/jdmarsh-dev/fieldhouse/pkg/utils"
	"github.com/jdmarsh-dev/fieldhouse/pkg/validator"
	"github.com/jdmarsh-dev/fieldhouse/utils"
)

const inviteCodeLength = 8

// AdminController manages admin accounts and invitations.
type AdminController struct {
	repo   AdminRepository
	config *config.Config
}

func NewAdminController(repo AdminRepository, cfg *config.Config) *AdminController {
	return &AdminController{
		repo:   repo,
		config: cfg,
	}
}

// --- DTOs ---

type CreateInviteRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	SchoolID *uint  `json:"school_id"`
	Role     string `json:"role" binding:"omitempty,oneof=school_admin super_admin"`
}

type InviteCreatedResult struct {
	Invite AdminInvite `json:"invite"`
	Token  string      `json:"token"`
	Code   string      `json:"code"`
}

type AcceptInviteRequest struct {
	Token     string `json:"token" binding:"required"`
	Code      string `json:"code" binding:"required,min=4,max=32"`
	FullName  string `json:"full_name" binding:"omitempty,max=100"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url|uri,max=500"`
}

type SetAdminActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type SchoolAdminsResult struct {
	Admins  []Admin       `json:"admins"`
	Invites []AdminInvite `json:"pending_invites"`
}

// --- Handlers ---

// ListSchoolAdmins godoc
// @Summary List a school's admins and pending invites
// @Tags Admins
// @Produce json
// @Param school_id path int true "School ID"
// @Success 200 {object} responses.SuccessResponse{data=SchoolAdminsResult}
// @Router /schools/{school_id}/admins [get]
// @Security BearerAuth
func (ac *AdminController) ListSchoolAdmins(c *gin.Context) {
	schoolID, err := common.ParseEntityID(c, "school_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	admins, err := ac.repo.GetAdminsBySchool(schoolID)
	if err != nil {
		log.Error().Err(err).Str("action", "ListSchoolAdmins").Uint("school_id", schoolID).Msg("query failed")
		responses.InternalServerError(c, "Failed to list admins")
		return
	}
	invites, err := ac.repo.GetInvitesBySchool(schoolID)
	if err != nil {
		log.Error().Err(err).Str("action", "ListSchoolAdmins").Uint("school_id", schoolID).Msg("invite query failed")
		responses.InternalServerError(c, "Failed to list invites")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", SchoolAdminsResult{Admins: admins, Invites: invites})
}

// ListSuperAdmins godoc
// @Summary List platform operators
// @Tags Admins
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=[]Admin}
// @Router /admins/platform [get]
// @Security BearerAuth
func (ac *AdminController) ListSuperAdmins(c *gin.Context) {
	admins, err := ac.repo.GetSuperAdmins()
	if err != nil {
		log.Error().Err(err).Str("action", "ListSuperAdmins").Msg("query failed")
		responses.InternalServerError(c, "Failed to list platform admins")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", admins)
}

// CreateInvite godoc
// @Summary Invite a new admin
// @Description Returns the signed invite token and the one-time code. Delivery
// @Description (email) is handled by the caller; the code is never stored in plaintext.
// @Tags Admins
// @Accept json
// @Produce json
// @Param invite body CreateInviteRequest true "Invite request"
// @Success 201 {object} responses.SuccessResponse{data=InviteCreatedResult}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 403 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse
// @Router /admins/invites [post]
// @Security BearerAuth
func (ac *AdminController) CreateInvite(c *gin.Context) {
	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	role := req.Role
	if role == "" {
		role = common.RoleSchoolAdmin
	}

	// School admins may only invite school admins into their own school.
	if !strings.EqualFold(ident.Role, common.RoleSuperAdmin) {
		if role != common.RoleSchoolAdmin {
			responses.Forbidden(c, "Only super admins can grant that role")
			return
		}
		if req.SchoolID == nil || ident.SchoolID == nil || *req.SchoolID != *ident.SchoolID {
			responses.Forbidden(c, "You can only invite admins to your own school")
			return
		}
	}
	if role == common.RoleSchoolAdmin && req.SchoolID == nil {
		responses.BadRequest(c, "school_id is required for school admin invites")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := ac.repo.GetAdminByEmail(email)
	if err != nil {
		log.Error().Err(err).Str("action", "CreateInvite").Msg("admin lookup failed")
		responses.InternalServerError(c, "Failed to create invite")
		return
	}
	if existing != nil && existing.Active {
		responses.Conflict(c, "An active admin with this email already exists")
		return
	}
	pending, err := ac.repo.GetPendingInviteByEmail(email)
	if err != nil {
		log.Error().Err(err).Str("action", "CreateInvite").Msg("invite lookup failed")
		responses.InternalServerError(c, "Failed to create invite")
		return
	}
	if pending != nil {
		responses.Conflict(c, "A pending invite for this email already exists")
		return
	}

	code := pkgutils.GenerateRandomToken(inviteCodeLength)
	if code == "" {
		responses.InternalServerError(c, "Failed to generate invite code")
		return
	}
	codeHash, err := utils.HashInviteCode(code)
	if err != nil {
		log.Error().Err(err).Str("action", "CreateInvite").Msg("code hashing failed")
		responses.InternalServerError(c, "Failed to create invite")
		return
	}

	signed, err := token.GenerateInviteToken(email, req.SchoolID, role, ac.config.Invite.Secret, ac.config.Invite.ExpiryHours)
	if err != nil {
		log.Error().Err(err).Str("action", "CreateInvite").Msg("token signing failed")
		responses.InternalServerError(c, "Failed to create invite")
		return
	}

	inv := AdminInvite{
		Email:     email,
		SchoolID:  req.SchoolID,
		Role:      role,
		CodeHash:  codeHash,
		ExpiresAt: time.Now().Add(time.Duration(ac.config.Invite.ExpiryHours) * time.Hour),
	}
	if err := ac.repo.CreateInvite(&inv); err != nil {
		log.Error().Err(err).Str("action", "CreateInvite").Msg("insert failed")
		responses.InternalServerError(c, "Failed to create invite")
		return
	}

	log.Info().Str("email", email).Str("role", role).Str("invited_by", ident.ID).Msg("admin invite created")
	responses.SendSuccess(c, http.StatusCreated, "Invite created", InviteCreatedResult{
		Invite: inv,
		Token:  signed,
		Code:   code,
	})
}

// AcceptInvite godoc
// @Summary Accept an admin invite
// @Description The caller authenticates with a Clerk session token but does not
// @Description yet have an admin account. A valid invite token plus the mailed
// @Description code creates (or reactivates) the account bound to that session's user.
// @Tags Admins
// @Accept json
// @Produce json
// @Param acceptance body AcceptInviteRequest true "Invite acceptance"
// @Success 201 {object} responses.SuccessResponse{data=Admin}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 401 {object} responses.ErrorResponse
// @Router /admins/invites/accept [post]
// @Security BearerAuth
func (ac *AdminController) AcceptInvite(c *gin.Context) {
	// Cannot use the auth middleware here: the accepting user has no admin
	// row yet. Verify the session token directly.
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		responses.Unauthorized(c, "A Clerk session token is required to accept an invite")
		return
	}
	sessionClaims, err := clerkjwt.Verify(c.Request.Context(), &clerkjwt.VerifyParams{Token: parts[1]})
	if err != nil {
		responses.Unauthorized(c, "Invalid or expired session token")
		return
	}

	var req AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	claims, err := token.ValidateInviteToken(req.Token, ac.config.Invite.Secret)
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	inv, err := ac.repo.GetPendingInviteByEmail(claims.Email)
	if err != nil {
		log.Error().Err(err).Str("action", "AcceptInvite").Msg("invite lookup failed")
		responses.InternalServerError(c, "Failed to accept invite")
		return
	}
	if inv == nil {
		responses.BadRequest(c, "Invite not found, already used, or expired")
		return
	}
	if !utils.CheckInviteCode(inv.CodeHash, req.Code) {
		responses.BadRequest(c, "Invite code does not match")
		return
	}

	existing, err := ac.repo.GetAdminByID(sessionClaims.Subject)
	if err != nil {
		log.Error().Err(err).Str("action", "AcceptInvite").Msg("admin lookup failed")
		responses.InternalServerError(c, "Failed to accept invite")
		return
	}

	var account *Admin
	if existing != nil {
		existing.SchoolID = inv.SchoolID
		existing.Role = inv.Role
		existing.Email = claims.Email
		existing.Active = true
		if req.FullName != "" {
			existing.FullName = req.FullName
		}
		if req.AvatarURL != "" {
			existing.AvatarURL = req.AvatarURL
		}
		if err := ac.repo.UpdateAdmin(existing); err != nil {
			log.Error().Err(err).Str("action", "AcceptInvite").Msg("reactivation failed")
			responses.InternalServerError(c, "Failed to accept invite")
			return
		}
		account = existing
	} else {
		account = &Admin{
			ID:        sessionClaims.Subject,
			SchoolID:  inv.SchoolID,
			Role:      inv.Role,
			Email:     claims.Email,
			FullName:  req.FullName,
			AvatarURL: req.AvatarURL,
			Active:    true,
		}
		if err := ac.repo.CreateAdmin(account); err != nil {
			log.Error().Err(err).Str("action", "AcceptInvite").Msg("insert failed")
			responses.InternalServerError(c, "Failed to accept invite")
			return
		}
	}

	if err := ac.repo.MarkInviteUsed(inv.ID); err != nil {
		// Account exists already; log and continue.
		log.Error().Err(err).Uint("invite_id", inv.ID).Msg("failed to mark invite used")
	}

	log.Info().Str("admin_id", account.ID).Str("email", account.Email).Msg("admin invite accepted")
	responses.SendSuccess(c, http.StatusCreated, "Invite accepted", account)
}

// RevokeInvite godoc
// @Summary Revoke a pending invite
// @Tags Admins
// @Produce json
// @Param invite_id path int true "Invite ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admins/invites/{invite_id} [delete]
// @Security BearerAuth
func (ac *AdminController) RevokeInvite(c *gin.Context) {
	inviteID, err := common.ParseEntityID(c, "invite_id")
	if err != nil {
		responses.BadRequest(c, err.Error())
		return
	}

	inv, err := ac.repo.GetInviteByID(inviteID)
	if err != nil {
		log.Error().Err(err).Str("action", "RevokeInvite").Msg("invite lookup failed")
		responses.InternalServerError(c, "Failed to revoke invite")
		return
	}
	if inv == nil {
		responses.NotFound(c, "Invite")
		return
	}

	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	if !strings.EqualFold(ident.Role, common.RoleSuperAdmin) {
		if inv.SchoolID == nil || ident.SchoolID == nil || *inv.SchoolID != *ident.SchoolID {
			responses.Forbidden(c, "You can only revoke invites for your own school")
			return
		}
	}

	if err := ac.repo.DeleteInvite(inv.ID); err != nil {
		log.Error().Err(err).Str("action", "RevokeInvite").Msg("delete failed")
		responses.InternalServerError(c, "Failed to revoke invite")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Invite revoked", gin.H{"invite_id": inv.ID})
}

// SetAdminActive godoc
// @Summary Activate or deactivate an admin account
// @Tags Admins
// @Accept json
// @Produce json
// @Param admin_id path string true "Admin ID"
// @Param body body SetAdminActiveRequest true "Activation state"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /admins/{admin_id}/active [patch]
// @Security BearerAuth
func (ac *AdminController) SetAdminActive(c *gin.Context) {
	adminID := strings.TrimSpace(c.Param("admin_id"))
	if adminID == "" || adminID == "null" || adminID == "undefined" {
		responses.BadRequest(c, "A valid admin id is required")
		return
	}

	var req SetAdminActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	target, err := ac.repo.GetAdminByID(adminID)
	if err != nil {
		log.Error().Err(err).Str("action", "SetAdminActive").Msg("admin lookup failed")
		responses.InternalServerError(c, "Failed to update admin")
		return
	}
	if target == nil {
		responses.NotFound(c, "Admin")
		return
	}

	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}
	if ident.ID == target.ID {
		responses.BadRequest(c, "You cannot change your own activation state")
		return
	}
	if !strings.EqualFold(ident.Role, common.RoleSuperAdmin) {
		if target.SchoolID == nil || ident.SchoolID == nil || *target.SchoolID != *ident.SchoolID {
			responses.Forbidden(c, "You can only manage admins of your own school")
			return
		}
	}

	if err := ac.repo.SetActive(target.ID, *req.Active); err != nil {
		log.Error().Err(err).Str("action", "SetAdminActive").Msg("update failed")
		responses.InternalServerError(c, "Failed to update admin")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Admin updated", gin.H{
		"admin_id": target.ID,
		"active":   *req.Active,
	})
}

// GetCurrentAdmin godoc
// @Summary Current admin account
// @Tags Admins
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Admin}
// @Router /admins/me [get]
// @Security BearerAuth
func (ac *AdminController) GetCurrentAdmin(c *gin.Context) {
	ident, err := common.GetAdminFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	account, err := ac.repo.GetAdminByID(ident.ID)
	if err != nil || account == nil {
		log.Error().Err(err).Str("admin_id", ident.ID).Msg("current admin lookup failed")
		responses.InternalServerError(c, "Failed to load admin account")
		return
	}

	now := time.Now()
	account.LastSeen = &now
	if err := ac.repo.UpdateAdmin(account); err != nil {
		log.Warn().Err(err).Str("admin_id", account.ID).Msg("failed to record last seen")
	}

	responses.SendSuccess(c, http.StatusOK, "", account)
}
