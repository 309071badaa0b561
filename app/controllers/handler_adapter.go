package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/GritGym/app/repository"
	"github.com/ManuelReschke/GritGym/internal/pkg/membership"
	"github.com/ManuelReschke/GritGym/internal/pkg/statistics"
)

// Dependencies are the services shared by all page controllers
type Dependencies struct {
	Catalog     membership.Catalog
	Intake      *membership.IntakeService
	Moderation  *membership.ModerationQueue
	Methods     []membership.PaymentMethodInfo
	Captcha     CaptchaVerifier
	CaptchaSite string
	Users       repository.UserRepository
	Counter     statistics.StatusCounter
}

// Global controller instances
var (
	mainController       *MainController
	membershipController *MembershipController
	adminController      *AdminController
	authController       *AuthController
	oauthController      *OAuthController
)

// InitializeControllers creates the global controllers
func InitializeControllers(d Dependencies) {
	mainController = NewMainController(d.Catalog, d.Counter)
	membershipController = NewMembershipController(d.Catalog, d.Intake, d.Methods, d.Captcha, d.CaptchaSite)
	adminController = NewAdminController(d.Moderation, d.Users)
	authController = NewAuthController(d.Users)
	oauthController = NewOAuthController(d.Users)
}

// Adapter functions used by the router

func HandleStart(c *fiber.Ctx) error { return mainController.HandleStart(c) }

func HandleMembership(c *fiber.Ctx) error        { return membershipController.HandleShow(c) }
func HandleMembershipPlan(c *fiber.Ctx) error    { return membershipController.HandlePlan(c) }
func HandleMembershipMethod(c *fiber.Ctx) error  { return membershipController.HandleMethod(c) }
func HandleMembershipDetails(c *fiber.Ctx) error { return membershipController.HandleDetails(c) }
func HandleMembershipBack(c *fiber.Ctx) error    { return membershipController.HandleBack(c) }
func HandleMembershipSubmit(c *fiber.Ctx) error  { return membershipController.HandleSubmit(c) }
func HandleMembershipClose(c *fiber.Ctx) error   { return membershipController.HandleClose(c) }

func HandleAdminDashboard(c *fiber.Ctx) error      { return adminController.HandleDashboard(c) }
func HandleAdminPayments(c *fiber.Ctx) error       { return adminController.HandlePayments(c) }
func HandleAdminPaymentDetail(c *fiber.Ctx) error  { return adminController.HandlePaymentDetail(c) }
func HandleAdminPaymentApprove(c *fiber.Ctx) error { return adminController.HandleApprove(c) }
func HandleAdminPaymentReject(c *fiber.Ctx) error  { return adminController.HandleReject(c) }

func HandleAuthLogin(c *fiber.Ctx) error     { return authController.HandleLogin(c) }
func HandleAuthLogout(c *fiber.Ctx) error    { return authController.HandleLogout(c) }
func HandleOAuthCallback(c *fiber.Ctx) error { return oauthController.HandleCallback(c) }
