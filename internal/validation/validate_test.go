package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() MemberInput {
	return MemberInput{
		FirstName: "stacy",
		LastName:  "bale",
		Email:     "stacy@x.com",
		Phone:     "111-111-1111",
		Role:      "Regular",
	}
}

func TestMemberInputValid(t *testing.T) {
	require.Nil(t, MemberInputErrors(validInput()))
}

func TestMemberInputRoleOptional(t *testing.T) {
	in := validInput()
	in.Role = ""
	require.Nil(t, MemberInputErrors(in))
	assert.Equal(t, "Regular", string(in.RoleOrDefault()))
}

func TestMemberInputNamesOptional(t *testing.T) {
	in := validInput()
	in.FirstName = ""
	in.LastName = ""
	require.Nil(t, MemberInputErrors(in))
}

func TestMemberInputEmailRequired(t *testing.T) {
	in := validInput()
	in.Email = ""
	errs := MemberInputErrors(in)
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgRequired}, errs["email"])
}

func TestMemberInputPhoneRequired(t *testing.T) {
	in := validInput()
	in.Phone = ""
	errs := MemberInputErrors(in)
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgRequired}, errs["phone"])
}

func TestMemberInputInvalidEmail(t *testing.T) {
	in := validInput()
	in.Email = "invalid_email"
	errs := MemberInputErrors(in)
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgInvalidEmail}, errs["email"])
}

func TestMemberInputInvalidRole(t *testing.T) {
	in := validInput()
	in.Role = "Owner"
	errs := MemberInputErrors(in)
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgInvalidChoice}, errs["role"])
}

func TestMemberInputPhoneFormats(t *testing.T) {
	bad := []string{"1321", "1112223344", "111222334455", "111-1111-111", "aaa-bbb-cccc", " 111-111-1111", "111-111-1111 "}
	for _, phone := range bad {
		in := validInput()
		in.Phone = phone
		errs := MemberInputErrors(in)
		require.NotNil(t, errs, "phone %q should be rejected", phone)
		assert.Equal(t, []string{MsgInvalidPhone}, errs["phone"], "phone %q", phone)
	}

	in := validInput()
	in.Phone = "111-111-1111"
	require.Nil(t, MemberInputErrors(in))
}

func TestMemberInputReportsAllFields(t *testing.T) {
	errs := MemberInputErrors(MemberInput{})
	require.NotNil(t, errs)
	assert.Equal(t, []string{MsgRequired}, errs["email"])
	assert.Equal(t, []string{MsgRequired}, errs["phone"])
	assert.Len(t, errs, 2)
}

func TestValidatePhone(t *testing.T) {
	require.Error(t, ValidatePhone("1321"))
	require.Error(t, ValidatePhone("1112223344"))
	require.Error(t, ValidatePhone("111222334455"))
	require.NoError(t, ValidatePhone("111-111-1111"))
}

func TestValidateEmail(t *testing.T) {
	require.Error(t, ValidateEmail(""))
	require.Error(t, ValidateEmail("invalid_email"))
	require.NoError(t, ValidateEmail("stacy@x.com"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Stacy@gmail.com", NormalizeEmail("Stacy@GMAIL.COM"))
	assert.Equal(t, "admin", NormalizeEmail("admin"))
}

func TestFieldErrorsDetails(t *testing.T) {
	errs := FieldErrors{"email": {MsgInvalidEmail}}
	details := errs.Details()
	assert.Equal(t, []string{MsgInvalidEmail}, details["email"])
	assert.Contains(t, errs.Error(), "email")
}
