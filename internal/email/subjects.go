package email

const subjectMemberInviteFmt = "You have been added to %s"
