// internal/repository/mock_gen.go
package repository

//go:generate mockgen -source=./identity.go -destination=../mocks/mock_identity_repository.go -package=mocks IdentityRepositoryIface
//go:generate mockgen -source=./credential.go -destination=../mocks/mock_credential_repository.go -package=mocks CredentialRepositoryIface
//go:generate mockgen -source=./user.go -destination=../mocks/mock_user_repository.go -package=mocks UserRepositoryIface
//go:generate mockgen -source=./organization.go -destination=../mocks/mock_organization_repository.go -package=mocks OrganizationRepositoryIface
//go:generate mockgen -source=./event.go -destination=../mocks/mock_event_repository.go -package=mocks EventRepositoryIface
//go:generate mockgen -source=./tag.go -destination=../mocks/mock_tag_repository.go -package=mocks TagRepositoryIface
//go:generate mockgen -source=./invitation.go -destination=../mocks/mock_invitation_repository.go -package=mocks InvitationRepositoryIface
