package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dverdu/albaranes-api/internal/application/dto"
	"github.com/dverdu/albaranes-api/internal/domain"
	"github.com/dverdu/albaranes-api/internal/domain/entity"
	"github.com/dverdu/albaranes-api/internal/domain/repository"
	"github.com/dverdu/albaranes-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// CodePolicy comportamiento de registro y códigos de un solo uso.
type CodePolicy struct {
	AllowPendingDuplicates bool
	VerificationTTL        time.Duration
	ResetTTL               time.Duration
	Attempts               int
}

// AuthUseCase casos de uso de cuenta: registro, verificación de email, login,
// recuperación de contraseña, perfil, empresa e invitaciones.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	mail        MailSender
	jwtCfg      JWTConfig
	policy      CodePolicy
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	mail MailSender,
	jwtCfg JWTConfig,
	policy CodePolicy,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		mail:        mail,
		jwtCfg:      jwtCfg,
		policy:      policy,
	}
}

// Register crea una cuenta PENDING, le asigna un código de verificación y
// devuelve el usuario con un token de sesión. Un email ya verificado produce
// ErrEmailAlreadyExists; los duplicados PENDING se toleran según la política.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email es obligatorio", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}

	verified, err := uc.userRepo.GetVerifiedByEmail(email)
	if err != nil {
		return nil, err
	}
	if verified != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if !uc.policy.AllowPendingDuplicates {
		existing, err := uc.userRepo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Status:       entity.UserStatusPending,
		Role:         entity.RoleUser,
		Name:         in.Name,
		Surname:      in.Surname,
		Verification: &entity.CodeRecord{
			Code:      code,
			Attempts:  uc.policy.Attempts,
			ExpiresAt: now.Add(uc.policy.VerificationTTL),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	if err := uc.mail.SendVerificationCode(user.Email, code); err != nil {
		return nil, fmt.Errorf("enviar código de verificación: %w", err)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{User: *uc.toUserResponse(user), Token: token}, nil
}

// ValidateEmail consume el código de verificación. Un código incorrecto
// descuenta un intento y devuelve ErrCodeMismatch junto a los intentos
// restantes; sin intentos o caducado devuelve ErrCodeExpired aunque el código
// fuera correcto.
func (uc *AuthUseCase) ValidateEmail(userID, code string) (*dto.ValidateEmailResponse, int, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, domain.ErrNotFound
	}
	if user.Status == entity.UserStatusVerified {
		return nil, 0, domain.ErrAlreadyVerified
	}
	now := time.Now()
	if !user.Verification.Usable(now) {
		return nil, 0, domain.ErrCodeExpired
	}
	if user.Verification.Code != code {
		user.Verification.Attempts--
		user.UpdatedAt = now
		if err := uc.userRepo.Update(user); err != nil {
			return nil, 0, err
		}
		return nil, user.Verification.Attempts, domain.ErrCodeMismatch
	}

	user.Status = entity.UserStatusVerified
	user.Verification = nil
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, 0, err
	}
	return &dto.ValidateEmailResponse{
		Message: "Email verificado correctamente",
		Status:  user.Status,
	}, 0, nil
}

// Login verifica credenciales y emite el token de sesión. Email desconocido y
// contraseña incorrecta producen el mismo ErrUnauthorized; una cuenta sin
// verificar se señala aparte con ErrEmailNotVerified.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusVerified {
		return nil, domain.ErrEmailNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{User: *uc.toUserResponse(user), Token: token}, nil
}

// RecoverPassword emite un código de recuperación independiente del de
// verificación y lo envía por correo.
func (uc *AuthUseCase) RecoverPassword(email string) error {
	user, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	code, err := generateCode()
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordReset = &entity.CodeRecord{
		Code:      code,
		Attempts:  uc.policy.Attempts,
		ExpiresAt: now.Add(uc.policy.ResetTTL),
	}
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	return uc.mail.SendPasswordResetCode(user.Email, code)
}

// ResetPassword consume el código de recuperación con la misma política de
// intentos y caducidad que la verificación, y re-hashea la nueva contraseña.
func (uc *AuthUseCase) ResetPassword(in dto.ResetPasswordRequest) (int, error) {
	if len(in.Password) < 8 {
		return 0, fmt.Errorf("%w: password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, domain.ErrNotFound
	}
	now := time.Now()
	if !user.PasswordReset.Usable(now) {
		return 0, domain.ErrCodeExpired
	}
	if user.PasswordReset.Code != in.Code {
		user.PasswordReset.Attempts--
		user.UpdatedAt = now
		if err := uc.userRepo.Update(user); err != nil {
			return 0, err
		}
		return user.PasswordReset.Attempts, domain.ErrCodeMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	user.PasswordHash = string(hash)
	user.PasswordReset = nil
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return 0, err
	}
	return 0, nil
}

// Invite incorpora a un usuario verificado y sin empresa como GUEST en la
// empresa del invitador.
func (uc *AuthUseCase) Invite(inviterID string, in dto.InviteRequest) (*dto.UserResponse, error) {
	inviter, err := uc.userRepo.GetByID(inviterID)
	if err != nil {
		return nil, err
	}
	if inviter == nil {
		return nil, domain.ErrNotFound
	}
	if inviter.CompanyID == "" {
		return nil, fmt.Errorf("%w: el invitador no tiene empresa", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(inviter.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	invitee, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if invitee == nil {
		return nil, domain.ErrNotFound
	}
	if invitee.Status != entity.UserStatusVerified {
		return nil, fmt.Errorf("%w: el invitado no está verificado", domain.ErrInvalidInput)
	}
	if invitee.CompanyID != "" {
		return nil, fmt.Errorf("%w: el invitado ya pertenece a una empresa", domain.ErrInvalidInput)
	}

	invitee.Role = entity.RoleGuest
	invitee.CompanyID = inviter.CompanyID
	invitee.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(invitee); err != nil {
		return nil, err
	}
	if err := uc.mail.SendGuestInvitation(invitee.Email, inviter.Email, company.Name); err != nil {
		return nil, fmt.Errorf("enviar invitación: %w", err)
	}
	return uc.toUserResponse(invitee), nil
}

// GetProfile devuelve el perfil del usuario con su empresa resuelta.
func (uc *AuthUseCase) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toUserResponse(user), nil
}

// UpdateProfile edita los datos personales.
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Surname != "" {
		user.Surname = in.Surname
	}
	if in.NIF != "" {
		user.NIF = in.NIF
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return uc.toUserResponse(user), nil
}

// DeleteAccount elimina la cuenta: soft marca deleted_at, hard borra la fila.
func (uc *AuthUseCase) DeleteAccount(userID string, soft bool) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if soft {
		return uc.userRepo.SoftDelete(userID, time.Now())
	}
	return uc.userRepo.HardDelete(userID)
}

// UpsertCompany crea la empresa del usuario o actualiza la que ya posee.
// Un GUEST no puede redefinir la empresa a la que fue invitado.
func (uc *AuthUseCase) UpsertCompany(userID string, in dto.CompanyRequest) (*dto.UserResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	// La empresa se resuelve por propiedad, no por el vínculo del usuario: si
	// user.CompanyID apunta a la empresa de otro, el usuario es un invitado.
	now := time.Now()
	owned, err := uc.companyRepo.GetByOwner(user.ID)
	if err != nil {
		return nil, err
	}
	if owned != nil {
		owned.Name = in.Name
		owned.CIF = in.CIF
		owned.Address = in.Address
		owned.IsAutonomous = in.IsAutonomous
		owned.UpdatedAt = now
		if err := uc.companyRepo.Update(owned); err != nil {
			return nil, err
		}
		if user.CompanyID != owned.ID {
			user.CompanyID = owned.ID
			user.UpdatedAt = now
			if err := uc.userRepo.Update(user); err != nil {
				return nil, err
			}
		}
		return uc.toUserResponse(user), nil
	}
	if user.CompanyID != "" {
		return nil, domain.ErrForbidden
	}

	company := &entity.Company{
		ID:           uuid.New().String(),
		OwnerUserID:  user.ID,
		Name:         in.Name,
		CIF:          in.CIF,
		Address:      in.Address,
		IsAutonomous: in.IsAutonomous,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	user.CompanyID = company.ID
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return uc.toUserResponse(user), nil
}

// SetLogo guarda la URL del logo ya subido al almacenamiento.
func (uc *AuthUseCase) SetLogo(userID, logoURL string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	user.LogoURL = logoURL
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return uc.toUserResponse(user), nil
}

func (uc *AuthUseCase) toUserResponse(u *entity.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Status:    u.Status,
		Role:      u.Role,
		Name:      u.Name,
		Surname:   u.Surname,
		NIF:       u.NIF,
		LogoURL:   u.LogoURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.CompanyID != "" {
		// La empresa se carga solo para la respuesta; si falla la lectura se
		// devuelve el perfil sin ella.
		if company, err := uc.companyRepo.GetByID(u.CompanyID); err == nil && company != nil {
			resp.Company = &dto.CompanyResponse{
				ID:           company.ID,
				Name:         company.Name,
				CIF:          company.CIF,
				Address:      company.Address,
				IsAutonomous: company.IsAutonomous,
			}
		}
	}
	return resp
}
